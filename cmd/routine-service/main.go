package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Eusouovitao/Rotina-Sankhya/routineservice"
)

func main() {
	if err := routineservice.Run(); err != nil {
		log.Error().Err(err).Msg("routine-service exited with error")
		os.Exit(1)
	}
}
