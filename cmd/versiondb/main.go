package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/versiondb/bootstrap"
	"github.com/fulldump/versiondb/configuration"
)

var banner = `
__     __            _             ____  ____  
\ \   / /__ _ __ ___(_) ___  _ __ |  _ \| __ ) 
 \ \ / / _ \ '__/ __| |/ _ \| '_ \| | | |  _ \ 
  \ V /  __/ |  \__ \ | (_) | | | | |_| | |_) |
   \_/ \___|_|  |___/_|\___/|_| |_|____/|____/ 
                            version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
