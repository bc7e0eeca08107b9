package commands

const (
	_etc = "/usr/local/etc/se.scilifelab.gdocs-projects"

	DEFAULT_CONFIG = _etc + "/post_process.yaml"
)
