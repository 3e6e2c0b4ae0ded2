// Package confirm asks the user to approve destructive operations.
package confirm

import "context"

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Static always gives the same answer without prompting.
type Static bool

func (s Static) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(s), nil
}
