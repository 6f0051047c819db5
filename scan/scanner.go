package scan

import "context"

// Scanner runs one scan. A successful run is expected to leave a new report in
// the output directory as a side effect.
type Scanner interface {
	Scan(ctx context.Context) error
}
