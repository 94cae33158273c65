package envexec

import (
	"bytes"
	"io"
	"os"
)

// collectFile reads at most limit bytes from the file. Missing file reads
// as empty.
func collectFile(p string, limit Size) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()
	return collect(f, limit)
}

// collect retains the first limit bytes from r and drains the rest
func collect(r io.Reader, limit Size) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, int64(limit))); err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
