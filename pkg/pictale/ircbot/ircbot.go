// Package ircbot writes stories about pictures posted to an IRC channel.
package ircbot

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/web"
)

const (
	ConfigKeyServerName = "ircServerName"
	ConfigKeyBotName    = "ircBotName"
	ConfigKeyChannel    = "ircChannel"
)

const (
	DefaultServerName = "irc.euirc.net:6667"
	DefaultBotName    = "Pictale"
	DefaultChannel    = "pictale"
)

// maxLineLength keeps a reply under the IRC message limit (512 bytes including the prefix).
const maxLineLength = 400

type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.UploadedImage, error)
}

// ReplyFunc sends one line back to where the message came from.
type ReplyFunc func(text string)

type Bot struct {
	api       api.API
	fetcher   ImageFetcher
	urlFinder *web.URLFinder
	jobQueue  *common.JobQueue
	logger    common.Logger
	name      string
}

func NewBot(service api.API, fetcher ImageFetcher, name string, logger common.Logger) *Bot {
	return &Bot{
		api:       service,
		fetcher:   fetcher,
		urlFinder: web.NewURLFinder(),
		jobQueue:  common.NewJobQueue(logger),
		logger:    logger,
		name:      name,
	}
}

// HandleMessage reacts to "<botName> <url>" said in a channel. Returns false if the message isn't for the bot.
// The story is written on the bot's job queue; `reply` is called from there.
func (b *Bot) HandleMessage(ctx context.Context, from, to, content string, reply ReplyFunc) bool {
	if len(to) == 0 || to[0] != '#' {
		return false
	}
	what, ok := b.addressedText(content)
	if !ok {
		return false
	}
	imageURL, ok := b.urlFinder.FirstURL(what)
	if !ok {
		reply(from + " give me a link to a JPG, JPEG, or PNG image and I'll write a story about it")
		return true
	}
	enqueued := b.jobQueue.Enqueue(func() error {
		return b.writeStory(ctx, from, imageURL, reply)
	})
	if !enqueued {
		reply(from + " too many pictures at once, try again later")
	}
	return true
}

// addressedText returns what follows "<botName>" (optionally with "," or ":") at the start of `content`. The name
// is matched case-insensitively and must be followed by a separator or the end of the message.
func (b *Bot) addressedText(content string) (string, bool) {
	end := 0
	for range b.name {
		if end >= len(content) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(content[end:])
		end += size
	}
	if !strings.EqualFold(content[:end], b.name) {
		return "", false
	}
	rest := content[end:]
	if rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if r != ',' && r != ':' && !unicode.IsSpace(r) {
			return "", false
		}
	}
	rest = strings.TrimPrefix(strings.TrimPrefix(rest, ","), ":")
	return strings.TrimSpace(rest), true
}

func (b *Bot) writeStory(ctx context.Context, from, imageURL string, reply ReplyFunc) error {
	logger := b.logger.WithFields(common.Fields{"nick": from, "url": imageURL})
	upload, err := b.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		logger.Error(err, "failed to fetch the image")
		reply(from + " I couldn't download a picture from that link")
		return nil
	}
	// The nick is the session: the same user can't queue a second story while the first one is being written.
	result, err := b.api.Generate(ctx, from, upload, nil)
	if err != nil {
		reply(from + " " + describeError(err))
		return nil
	}
	reply(from + " caption: " + result.Caption)
	for _, line := range common.SplitIntoLines(result.Story, maxLineLength) {
		reply(line)
	}
	return nil
}

// Trigger plugs the bot into hellabot.
func (b *Bot) Trigger(ctx context.Context) hbot.Trigger {
	return hbot.Trigger{
		Condition: func(bot *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG"
		},
		Action: func(bot *hbot.Bot, m *hbot.Message) bool {
			return b.HandleMessage(ctx, strings.TrimSpace(m.From), m.To, m.Content, func(text string) {
				bot.Reply(m, text)
			})
		},
	}
}

func (b *Bot) Stop() {
	b.jobQueue.Stop()
}

func describeError(err error) string {
	var rejectedFormatErr *domain.RejectedFormatError
	var modelLoadErr *domain.ModelLoadError
	var inferenceErr *domain.InferenceError
	switch {
	case errors.Is(err, api.ErrSessionBusy):
		return "I'm still writing your previous story, wait a bit"
	case errors.As(err, &rejectedFormatErr):
		return "unsupported file type, I only read JPG, JPEG, or PNG images"
	case errors.As(err, &modelLoadErr):
		return "my models are unavailable right now, try again later"
	case errors.As(err, &inferenceErr) && inferenceErr.Stage == domain.StageDecode:
		return "that doesn't look like a picture to me"
	case errors.As(err, &inferenceErr):
		return "I'm borked :( " + string(inferenceErr.Stage) + " failed"
	default:
		return "I'm borked :("
	}
}
