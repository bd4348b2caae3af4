package client

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"battwatch/pkg/config"
	"battwatch/pkg/types"
)

func (c *Client) GetStatus() (*types.Status, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get watcher status")
	}

	var status types.Status
	if err := json.Unmarshal([]byte(ret), &status); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal watcher status")
	}

	return &status, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) SetLowThreshold(l int) (string, error) {
	return c.Put("/low-threshold", strconv.Itoa(l))
}

func (c *Client) SetHighThreshold(h int) (string, error) {
	return c.Put("/high-threshold", strconv.Itoa(h))
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}
	return strings.Trim(strings.TrimSpace(ret), `"`), nil
}
