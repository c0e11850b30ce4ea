package downloads

import (
	"errors"
	"strings"

	"audiodownloader/internal/models"
)

// ClassifyFetchError wraps err in a FetchError whose kind is derived
// from the extractor's message. Substring matching on the legacy
// phrases keeps classification compatible with what yt-dlp actually
// prints.
func ClassifyFetchError(err error) *models.FetchError {
	if err == nil {
		return nil
	}

	var fe *models.FetchError
	if errors.As(err, &fe) {
		return fe
	}

	return &models.FetchError{
		Kind: classifyMessage(err.Error()),
		Err:  err,
	}
}

func classifyMessage(msg string) models.FetchErrorKind {
	switch {
	case strings.Contains(msg, "HTTP Error 404"):
		return models.FetchNotFound
	case strings.Contains(msg, "HTTP Error 403"):
		return models.FetchForbidden
	case strings.Contains(msg, "Unsupported URL"):
		return models.FetchUnsupported
	case strings.Contains(msg, "Unable to extract"):
		return models.FetchExtractor
	default:
		return models.FetchGeneric
	}
}
