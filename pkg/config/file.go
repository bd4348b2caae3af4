package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"battwatch/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	LowThreshold:          ptr.To(20),
	HighThreshold:         ptr.To(85),
	PollSeconds:           ptr.To(60),
	NotifyCooldownSeconds: ptr.To(10),
	TelegramAPIHost:       ptr.To("api.telegram.org"),
	TelegramChatID:        ptr.To(""),
	DesktopToast:          ptr.To(true),
}

var _ Config = &File{}

// File is a JSON file backed Config. The Telegram bot token is
// deliberately not part of the file format: it is read from the
// environment on Load so it never ends up on disk.
type File struct {
	c        *RawFileConfig
	botToken string
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

// RawFileConfig is the on-disk (and over-the-wire) representation.
// All fields are optional; missing fields fall back to defaults.
type RawFileConfig struct {
	LowThreshold          *int    `json:"lowThreshold,omitempty"`
	HighThreshold         *int    `json:"highThreshold,omitempty"`
	PollSeconds           *int    `json:"pollSeconds,omitempty"`
	NotifyCooldownSeconds *int    `json:"notifyCooldownSeconds,omitempty"`
	TelegramAPIHost       *string `json:"telegramApiHost,omitempty"`
	TelegramChatID        *string `json:"telegramChatId,omitempty"`
	DesktopToast          *bool   `json:"desktopToast,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		LowThreshold:          ptr.To(c.LowThreshold()),
		HighThreshold:         ptr.To(c.HighThreshold()),
		PollSeconds:           ptr.To(c.PollInterval()),
		NotifyCooldownSeconds: ptr.To(c.NotifyCooldown()),
		TelegramAPIHost:       ptr.To(c.TelegramAPIHost()),
		TelegramChatID:        ptr.To(c.TelegramChatID()),
		DesktopToast:          ptr.To(c.DesktopToast()),
	}, nil
}

func (f *File) LowThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LowThreshold != nil {
		return *f.c.LowThreshold
	}
	return *defaultFileConfig.LowThreshold
}

func (f *File) HighThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HighThreshold != nil {
		return *f.c.HighThreshold
	}
	return *defaultFileConfig.HighThreshold
}

func (f *File) PollInterval() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.PollSeconds != nil {
		return *f.c.PollSeconds
	}
	return *defaultFileConfig.PollSeconds
}

func (f *File) NotifyCooldown() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.NotifyCooldownSeconds != nil {
		return *f.c.NotifyCooldownSeconds
	}
	return *defaultFileConfig.NotifyCooldownSeconds
}

func (f *File) TelegramAPIHost() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.TelegramAPIHost != nil && *f.c.TelegramAPIHost != "" {
		return *f.c.TelegramAPIHost
	}
	return *defaultFileConfig.TelegramAPIHost
}

func (f *File) TelegramChatID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.TelegramChatID != nil {
		return *f.c.TelegramChatID
	}
	return *defaultFileConfig.TelegramChatID
}

func (f *File) BotToken() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.botToken
}

func (f *File) DesktopToast() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DesktopToast != nil {
		return *f.c.DesktopToast
	}
	return *defaultFileConfig.DesktopToast
}

func (f *File) SetLowThreshold(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LowThreshold = &i
}

func (f *File) SetHighThreshold(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HighThreshold = &i
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.botToken = os.Getenv(EnvBotToken)

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, run on defaults.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			f.applyEnvOverrides()
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder
	// will not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		f.applyEnvOverrides()
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf
	f.applyEnvOverrides()

	return nil
}

// applyEnvOverrides lets the environment win over the file for the
// chat id, so the file can be shared without the destination in it.
// Caller must hold f.mu.
func (f *File) applyEnvOverrides() {
	if chatID := os.Getenv(EnvChatID); chatID != "" {
		f.c.TelegramChatID = &chatID
	}
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"lowThreshold":   f.LowThreshold(),
		"highThreshold":  f.HighThreshold(),
		"pollSeconds":    f.PollInterval(),
		"notifyCooldown": f.NotifyCooldown(),
		"telegramChatId": f.TelegramChatID(),
		"botTokenSet":    f.BotToken() != "",
		"desktopToast":   f.DesktopToast(),
	}
}
