package filters

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GPG decrypts a GPG-encrypted value using the gpg binary and the caller's
// keyring. An optional argument overrides the gnupg home directory, which
// defaults to $HOME/.gnupg.
func GPG(in interface{}, args ...interface{}) (interface{}, error) {
	value, ok := in.(string)
	if !ok {
		return nil, fmt.Errorf("gpg expects a string value, got %T", in)
	}

	homedir := filepath.Join(os.Getenv("HOME"), ".gnupg")
	if len(args) > 0 {
		homedir, ok = args[0].(string)
		if !ok {
			return nil, fmt.Errorf("gpg homedir must be a string, got %T", args[0])
		}
	}

	cmd := exec.Command("gpg", "--homedir", homedir, "--batch", "--quiet", "--decrypt")
	cmd.Stdin = strings.NewReader(value)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("unable to decrypt the given value: %w", err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("unable to decrypt the given value: gpg produced no output")
	}

	return out.String(), nil
}
