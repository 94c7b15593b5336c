package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrOverwriteDeclined is returned when the user refuses to overwrite an
// existing output directory.
var ErrOverwriteDeclined = errors.New("overwrite declined")

// confirmOverwrite asks whether dir may be overwritten. Only a reply
// starting with 'y' counts as yes.
func confirmOverwrite(in io.Reader, out io.Writer, dir string) (bool, error) {
	fmt.Fprintf(out, "%s exists. Do you want to overwrite it? (y/n)", dir)
	reply, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	reply = strings.ToLower(strings.TrimSpace(reply))
	return strings.HasPrefix(reply, "y"), nil
}

// prepareOutputDir creates dir when missing. An existing dir is reused
// only if assumeYes is set or the user confirms.
func prepareOutputDir(dir string, assumeYes bool, in io.Reader, out io.Writer) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(dir, 0o755)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("output path %s exists and is not a directory", dir)
	}

	if assumeYes {
		return nil
	}
	ok, err := confirmOverwrite(in, out, dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOverwriteDeclined, dir)
	}
	return nil
}
