package validator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"fitback-api/internal/interface/api/rest/dto/logging"
)

var ErrInvalidChunkIndex = errors.New("chunkIndex and totalChunks must be integers with 0 <= chunkIndex < totalChunks")

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil, id
}

func ValidateLogRequest(r logging.Request) bool {
	return strings.TrimSpace(r.Level) != "" && r.Message != ""
}

// MissingFields lists the keys whose value is blank.
func MissingFields(fields map[string]string) []string {
	var missing []string
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

func ParseChunkPosition(index, total string) (int, int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return 0, 0, ErrInvalidChunkIndex
	}
	n, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return 0, 0, ErrInvalidChunkIndex
	}
	if n <= 0 || i < 0 || i >= n {
		return 0, 0, ErrInvalidChunkIndex
	}

	return i, n, nil
}
