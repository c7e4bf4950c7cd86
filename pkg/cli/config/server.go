package config

import "github.com/urfave/cli/v3"

// Server holds docs preview server configuration
type Server struct {
	Addr string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Preview server address",
			Value:       "localhost:8000",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RELMAKE_ADDR"),
		},
	}
}
