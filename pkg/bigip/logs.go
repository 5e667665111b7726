package bigip

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/alessio/shellescape"
	"github.com/cockroachdb/errors"
)

const (
	MaxTailLines  = 1000
	MaxGrepLength = 200

	ltmLogFile   = "/var/log/ltm"
	bashUtilPath = "/tm/util/bash"
)

// TailLTMLog returns the last lines of /var/log/ltm, optionally filtered with a
// fixed-string grep. The command runs in a shell on the device, so the filter
// and the whole command are quoted.
func (c *Client) TailLTMLog(ctx context.Context, lines int, grep string) (string, error) {
	cmd, err := TailCommand(lines, grep)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"command":     "run",
		"utilCmdArgs": cmd,
	}
	out, err := c.Request(ctx, http.MethodPost, bashUtilPath, nil, body)
	if err != nil {
		return "", err
	}

	switch v := out.(type) {
	case map[string]any:
		s, _ := v["commandResult"].(string)
		return s, nil
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", errors.Newf("unexpected %T response from %s", out, bashUtilPath)
	}
}

// TailCommand builds the utilCmdArgs value for TailLTMLog.
func TailCommand(lines int, grep string) (string, error) {
	if lines < 1 || lines > MaxTailLines {
		return "", validationErrorf("lines must be between 1 and %d, got %d", MaxTailLines, lines)
	}
	if n := utf8.RuneCountInString(grep); n > MaxGrepLength {
		return "", validationErrorf("grep filter must be at most %d characters, got %d", MaxGrepLength, n)
	}

	inner := fmt.Sprintf("tail -n %d %s", lines, ltmLogFile)
	if grep != "" {
		inner += " | grep -F " + shellescape.Quote(grep)
	}
	return "-c " + shellescape.Quote(inner), nil
}
