package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	FindLimit         int    `usage:"default max number of documents returned by find, 0 means no limit"`
	AutoRefresh       bool   `usage:"refresh the server attachment after every committed write"`
	ApiKey            string `usage:"API key, leave empty to disable authentication"`
	ApiSecret         string `usage:"API secret"`
	EnableCompression bool   `usage:"gzip responses"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}
