package ops

// Config holds the operations HTTP server configuration. An empty Addr
// disables the server.
type Config struct {
	Addr string `yaml:"addr"`
}
