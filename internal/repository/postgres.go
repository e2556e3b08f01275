package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// parseID resolves a route identifier to a uuid. Anything malformed cannot
// name a stored row, so it reports not-found rather than a bad request.
func parseID(table, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NotFound(table)
	}
	return parsed, nil
}

// parseIDs canonicalizes uuid identifiers, dropping malformed and repeated
// ones. Order is kept.
func parseIDs(ids []string) []string {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		if _, ok := seen[parsed]; ok {
			continue
		}
		seen[parsed] = struct{}{}
		out = append(out, parsed.String())
	}
	return out
}

// queryErr annotates a failed query, turning pgx.ErrNoRows into ErrNotFound.
func queryErr(table, op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to %s: %w", op, NotFound(table))
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
