package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr        string
	MaxUploadMB int
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("IMGPRESS_ADDR"),
		},
		&cli.IntFlag{
			Name:        "max-upload-mb",
			Usage:       "Maximum request body size of an upload in MB",
			Value:       64,
			Destination: &c.MaxUploadMB,
			Sources:     cli.EnvVars("IMGPRESS_MAX_UPLOAD_MB"),
		},
	}
}

// MaxUploadSize returns the upload limit in bytes
func (c *Server) MaxUploadSize() int64 {
	return int64(c.MaxUploadMB) << 20
}
