package util

import (
	"os"

	"github.com/rs/zerolog/log"
)

func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		log.Error().Err(err).Str("file", f.Name()).Msg("close file")
	}
}
