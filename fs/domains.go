// Package fs loads iframer data files from the local filesystem.
package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/iframer"
)

// LoadDomains reads a supported domain list: a JSON array of strings as
// written by the domain crawler. Returns ENOTFOUND if the file does not exist.
func LoadDomains(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, iframer.Errorf(iframer.ENOTFOUND, "domain list %q not found", path)
	}
	if err != nil {
		return nil, err
	}

	var domains []string
	if err := json.Unmarshal(data, &domains); err != nil {
		return nil, iframer.Errorf(iframer.EINVALID, "domain list %q: %v", path, err)
	}
	return domains, nil
}
