package commands

import (
	"flag"
	"fmt"
)

const VERSION = "v0.1.0"

var VersionCmd = Version{}

// Version prints the gdocs-projects release and exits.
type Version struct {
}

// FlagSet is empty: 'version' takes no options.
func (c *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (c *Version) Execute(...any) error {
	fmt.Printf("%s\n", VERSION)

	return nil
}

func (c *Version) Name() string {
	return "version"
}

func (c *Version) Description() string {
	return "Prints the gdocs-projects release"
}

func (c *Version) Usage() string {
	return ""
}

func (c *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Printf("  Prints the %s release, e.g. %s\n", APP, VERSION)
	fmt.Println()
}
