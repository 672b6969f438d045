package configuration

func Default() Configuration {
	return Configuration{
		HttpAddr:          "127.0.0.1:8080",
		FindLimit:         1000,
		AutoRefresh:       true,
		ApiKey:            "",
		ApiSecret:         "",
		EnableCompression: true,
		Version:           false,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}
