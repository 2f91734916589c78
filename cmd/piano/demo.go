package main

import "github.com/gordonklaus/piano"

// demoSong is a short arpeggio over a bass line.
func demoSong() (*piano.Song, error) {
	return piano.NewSong(piano.DefaultBPM,
		piano.Note{Pitch: 60, Velocity: 80, Start: 0, Duration: 480},
		piano.Note{Pitch: 64, Velocity: 80, Start: 480, Duration: 480},
		piano.Note{Pitch: 67, Velocity: 80, Start: 960, Duration: 480},
		piano.Note{Pitch: 72, Velocity: 80, Start: 1440, Duration: 480},
		piano.Note{Pitch: 36, Velocity: 100, Start: 0, Duration: 960},
		piano.Note{Pitch: 55, Velocity: 100, Start: 960, Duration: 960},
		piano.Note{Pitch: 64, Velocity: 60, Start: 240, Duration: 1440},
		piano.Note{Pitch: 67, Velocity: 60, Start: 1200, Duration: 720},
	)
}
