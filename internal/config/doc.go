// Package config provides configuration parsing for vdom mounts.
//
// The configuration is stored in vdom.json (or vdom.yaml) at the project
// root. This package handles loading, saving, and validating it, and turns
// it into engine options.
//
// # Configuration File Structure
//
//	{
//	  "validate": true,
//	  "lookahead": 5,
//	  "softKeyPrefix": "~",
//	  "classPrefix": "vs",
//	  "logLevel": "info",
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vdom"
//	  },
//	  "tracing": {
//	    "tracerName": "github.com/vango-dev/vdom/engine"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inst := reg.Mount(body, doc, App, nil, cfg.EngineOptions(cfg.Logger(os.Stderr), nil)...)
package config
