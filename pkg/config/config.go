package config

// Env variable names for the Telegram credentials. The bot token is a
// secret and is only ever read from the environment, never from the
// config file.
const (
	EnvBotToken = "BATTWATCH_BOT_TOKEN"
	EnvChatID   = "BATTWATCH_CHAT_ID"
)

type Config interface {
	LowThreshold() int
	HighThreshold() int
	PollInterval() int
	NotifyCooldown() int
	TelegramAPIHost() string
	TelegramChatID() string
	BotToken() string
	DesktopToast() bool

	SetLowThreshold(int)
	SetHighThreshold(int)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
