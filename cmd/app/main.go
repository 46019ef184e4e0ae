package main

import (
	"github.com/obkschool/chatgame/internal/app"
	"github.com/obkschool/chatgame/internal/config"
)

func main() {
	app.Go(config.Load())
}
