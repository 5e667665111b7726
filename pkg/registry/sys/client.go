package sys

import "context"

//go:generate mockgen -source=client.go -destination=mock_client.go -package=sys

// LogsClient is the part of *bigip.Client used by the log tools.
type LogsClient interface {
	TailLTMLog(ctx context.Context, lines int, grep string) (string, error)
}
