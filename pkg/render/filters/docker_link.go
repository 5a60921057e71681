package filters

import (
	"fmt"
	"regexp"
	"strings"
)

var dockerLinkRe = regexp.MustCompile(`^(?P<proto>.+)://(?P<addr>.+):(?P<port>.+)$`)

// DockerLink parses a Docker Link environment variable value of the shape
// proto://addr:port and reformats it per the given template string. The
// template supports the {proto}, {addr} and {port} placeholders and
// defaults to "{addr}:{port}".
func DockerLink(in interface{}, args ...interface{}) (interface{}, error) {
	value, ok := in.(string)
	if !ok {
		return nil, fmt.Errorf("docker_link expects a string value, got %T", in)
	}

	format := "{addr}:{port}"
	if len(args) > 0 {
		format, ok = args[0].(string)
		if !ok {
			return nil, fmt.Errorf("docker_link format must be a string, got %T", args[0])
		}
	}

	m := dockerLinkRe.FindStringSubmatch(value)
	if m == nil {
		return nil, fmt.Errorf("the provided value does not seem to be a docker link: %s", value)
	}

	replacer := strings.NewReplacer(
		"{proto}", m[1],
		"{addr}", m[2],
		"{port}", m[3],
	)
	return replacer.Replace(format), nil
}
