package main

// Message constants
const (
	MsgRootShort = "Command-line interface to Jinja2 for templating in shell scripts"
	MsgRootLong  = `j2 renders a Jinja2 template against configuration data taken from
environment variables or a JSON, YAML, INI or env file, and writes the
result to stdout.

Any reference to a variable that is absent from the data aborts the
render: there is no silent empty-string substitution.

Examples:
  j2 nginx.conf.j2 config.json > /etc/nginx/nginx.conf
  j2 entrypoint.sh.j2                      # render from environment
  cat config.yaml | j2 -f yaml app.conf.j2 -
  j2 -C secrets.conf.j2 data.env           # with custom filters`

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Input data format: ?, env, json, yaml, ini ('?' detects from the data file extension)"
	MsgFlagCustoms   = "Attempt to load custom filters/tests from the working directory"
	MsgFlagImportEnv = "Nest the parsed data under this top-level key"
	MsgFlagOutput    = "Write rendered output to this file instead of stdout"

	MsgDocsShort = "Show the reference for available template filters and tests"
	MsgDocsLong  = `Print a reference document for every filter and test currently
registered, including entries contributed by an extension module when
custom filters are enabled. Output is rendered for the terminal when
stdout is a tty, and emitted as plain markdown otherwise.`

	MsgGenConfigShort = "Print or write the j2go configuration file"
	MsgGenConfigLong  = `Print the default configuration file with its documentation comments,
or the effective configuration after layering files, environment
variables and flags.`

	MsgVersionShort = "Print version information"
)
