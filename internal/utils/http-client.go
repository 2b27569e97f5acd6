package utils

import (
	"net/http"
	"net/url"
	"time"
)

type HTTPClientConfig struct {
	Timeout       time.Duration
	KATimeout     time.Duration
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
	UserAgent     string
	Headers       map[string]string
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	SetHeader(key, value string)
}

type VidgrabHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewVidgrabHTTPClient(cfg HTTPClientConfig) *VidgrabHTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		DisableCompression:  true,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			if cfg.ProxyUsername != "" {
				if cfg.ProxyPassword != "" {
					proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
				} else {
					proxyURL.User = url.User(cfg.ProxyUsername)
				}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &VidgrabHTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (v *VidgrabHTTPClient) SetHeader(key, value string) {
	v.config.Headers[key] = value
}

func (v *VidgrabHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if v.config.UserAgent != "" {
		req.Header.Set("User-Agent", v.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", "Vidgrab-CLI")
	}
	for k, v := range v.config.Headers {
		req.Header.Set(k, v)
	}
	return v.client.Do(req)
}
