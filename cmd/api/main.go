package main

// @title Skin Trade Log Bot API
// @version 1.0
// @description LINE bot logging skin trades to a spreadsheet, with a read API over the log.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "skinlog-bot/docs"
	protocol "skinlog-bot/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := protocol.ServeHTTP(); err != nil {
		logrus.Fatalln(err)
	}
}
