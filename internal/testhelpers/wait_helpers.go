package testhelpers

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"mcp-bigip/pkg/bigip"
	"mcp-bigip/pkg/registry/ltm"
)

// Default timeouts
const (
	defaultInterval = 2 * time.Second
	defaultTimeout  = 2 * time.Minute
)

// WaitForDevice polls ListVirtuals until the device answers. Configuration and
// authentication errors end the wait immediately; anything else is retried.
func WaitForDevice(ctx context.Context, client ltm.VirtualsClient, interval, timeout time.Duration) error {
	var last error
	err := poll(ctx, interval, timeout, func() (bool, error) {
		_, err := client.ListVirtuals(ctx, nil)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bigip.ErrConfig) || errors.Is(err, bigip.ErrAuth) {
			return false, err
		}
		last = err
		return false, nil
	})
	if err != nil && last != nil {
		return errors.Wrapf(err, "last error: %v", last)
	}
	return err
}

// WaitForVirtualRule polls until rule is (attached=true) or is not (attached=false)
// in the rule list of the virtual server at virtualPath. Both paths are full paths.
func WaitForVirtualRule(ctx context.Context, client ltm.VirtualsClient, virtualPath, rulePath string, attached bool, interval, timeout time.Duration) (bigip.Item, error) {
	var found bigip.Item
	err := poll(ctx, interval, timeout, func() (bool, error) {
		items, err := client.ListVirtuals(ctx, []string{"rules"})
		if err != nil {
			return false, err
		}
		for _, item := range items {
			if item.FullPath() != virtualPath {
				continue
			}
			found = item
			return slices.Contains(item.Rules(), rulePath) == attached, nil
		}
		return false, fmt.Errorf("virtual server %s not found", virtualPath)
	})
	return found, err
}

// WaitForPoolDeleted polls until no pool with fullPath is listed.
func WaitForPoolDeleted(ctx context.Context, client ltm.PoolsClient, fullPath string, interval, timeout time.Duration) error {
	return poll(ctx, interval, timeout, func() (bool, error) {
		items, err := client.ListPools(ctx, nil)
		if err != nil {
			return false, err
		}
		return !slices.ContainsFunc(items, func(i bigip.Item) bool { return i.FullPath() == fullPath }), nil
	})
}

// MustBigIPClient returns a client configured from BIGIP_* variables or panics.
func MustBigIPClient() *bigip.Client {
	settings, err := bigip.SettingsFromEnv()
	if err != nil {
		panic(fmt.Sprintf("BIGIP_HOST and BIGIP_TOKEN or BIGIP_USERNAME/BIGIP_PASSWORD must be set to run E2E tests: %v", err))
	}
	return bigip.New(*settings)
}

// --- Internal Helpers ---

// poll runs check immediately and then every interval until it reports done,
// returns an error, or timeout elapses.
func poll(ctx context.Context, interval, timeout time.Duration, check func() (bool, error)) error {
	if interval == 0 {
		interval = defaultInterval
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("timed out after %s", timeout)
		case <-ticker.C:
		}
	}
}
