package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

// The console has a single user.
const sessionName = "console"

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
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
	pictale := api.NewAPI(config, logger)
	if config.GetBoolOrDefault(api.ConfigKeyPreloadModels, false) {
		err := pictale.PreloadModels(context.Background())
		if err != nil {
			return err
		}
	}
	uploadGate := domain.NewUploadGate()
	rl, err := readline.New("image> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	fmt.Println(infoStyle.Render(domain.IdleMessage + " Type a path to a file."))
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":reset" {
			pictale.ResetModels()
			fmt.Println(infoStyle.Render("models will be reloaded on the next upload"))
			continue
		}
		upload, err := readUpload(uploadGate, line)
		if err != nil {
			fmt.Println(errorStyle.Render(describeError(err)))
			continue
		}
		result, err := pictale.Generate(context.Background(), sessionName, upload, &printingListener{})
		if err != nil {
			fmt.Println(errorStyle.Render(describeError(err)))
			continue
		}
		fmt.Println(headingStyle.Render("Generated Story"))
		fmt.Println(result.Story)
	}
	return nil
}

// readUpload checks the file name with the upload gate before touching the disk, so that a rejected file type is
// reported the same way whether the file exists or not.
func readUpload(uploadGate *domain.UploadGate, path string) (domain.UploadedImage, error) {
	name := filepath.Base(path)
	err := uploadGate.Validate(name)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	return domain.UploadedImage{Name: name, Data: data}, nil
}

func describeError(err error) string {
	var rejectedFormatErr *domain.RejectedFormatError
	if errors.As(err, &rejectedFormatErr) {
		return domain.RejectedFormatMessage
	}
	return err.Error()
}

// printingListener prints the intermediate results as soon as they arrive.
type printingListener struct {
	domain.NopProgressListener
}

func (p *printingListener) ImageDecoded(image *domain.DecodedImage) {
	fmt.Println(infoStyle.Render(fmt.Sprintf("%s: %s, %dx%d", image.Name, image.Format, image.Width, image.Height)))
}

func (p *printingListener) StageStarted(stage domain.Stage) {
	fmt.Println(infoStyle.Render(fmt.Sprintf("%s...", stage)))
}

func (p *printingListener) CaptionGenerated(caption string) {
	fmt.Println(headingStyle.Render("Generated Caption"))
	fmt.Println(caption)
}
