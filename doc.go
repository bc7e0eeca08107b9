/*
Package projects retrieves project metadata from the projects spreadsheet on Google Docs.

The projects spreadsheet is located by title and searched worksheet by worksheet for the rows
matching a project name. The requested columns are resolved against each worksheet's header row,
so worksheets may order their columns differently. Columns that cannot be found are reported as
"N/A".

gdocs-projects supports the following commands:

  - get-project, to retrieve the project data for a project as TSV or YAML
  - get-uppnex-id, to retrieve the Uppnex ID for a project
  - authorise, to authorise access to the projects spreadsheet with OAuth2 client credentials
  - version, to display the current version

The spreadsheet and worksheets are configured in the 'gdocs_upload' section of the pipeline
configuration:

	gdocs_upload:
	  gdocs_credentials: /usr/local/etc/gdocs-projects/credentials.json
	  projects_spreadsheet: Projects
	  projects_worksheet: 2012, 2013
*/
package projects
