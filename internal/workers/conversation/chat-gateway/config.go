package chatgateway

// Config identifies the hosted bot the gateway forwards utterances to.
type Config struct {
	BotID      string
	BotAliasID string
	LocaleID   string
}
