package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/DocChat/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

// GetHttpClient is the pooled client shared by every backend SDK. Its timeout
// bounds each generation call even if a caller forgets a deadline.
func GetHttpClient() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
			Timeout: config.HttpClientTimeout,
		}
	})
	return client
}
