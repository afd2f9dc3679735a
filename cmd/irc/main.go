package main

import (
	"context"

	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/web"
	"kgeyst.com/pictale/pkg/pictale/ircbot"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfigOrDefault("config.yaml")
	if err != nil {
		return err
	}
	logger := common.NewFileLogger(
		config.GetStringOrDefault(api.ConfigKeyLogPath, "log.txt"),
		config.GetStringOrDefault(api.ConfigKeyLogLevel, "info"),
	)
	botName := config.GetStringOrDefault(ircbot.ConfigKeyBotName, ircbot.DefaultBotName)
	serverName := config.GetStringOrDefault(ircbot.ConfigKeyServerName, ircbot.DefaultServerName)
	channel := config.GetStringOrDefault(ircbot.ConfigKeyChannel, ircbot.DefaultChannel)
	pictale := api.NewAPI(config, logger)
	if config.GetBoolOrDefault(api.ConfigKeyPreloadModels, false) {
		err := pictale.PreloadModels(context.Background())
		if err != nil {
			return err
		}
	}
	bot := ircbot.NewBot(pictale, web.NewImageFetcher(config), botName, logger)
	defer bot.Stop()
	ircBot, err := hbot.NewBot(serverName, botName)
	if err != nil {
		return err
	}
	ircBot.AddTrigger(bot.Trigger(context.Background()))
	ircBot.Channels = []string{"#" + channel}
	ircBot.Run()
	return nil
}
