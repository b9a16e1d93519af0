// Package config loads and saves the user's persistent preferences.
//
// Preferences live in a small HCL file:
//
//	animation_enabled = true
//	step_delay        = "300ms"
//	digest            = "sha256"
//
//	log {
//	  level  = "info"
//	  format = "text"
//	}
//
//	server {
//	  address          = ":3000"
//	  healthcheck_path = "/health"
//	}
//
// Every attribute and block is optional; anything left out keeps its
// default. A missing file is not an error. Command-line flags override what
// is loaded here.
package config
