package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
)

type playerClient interface {
	GetPlayer(ctx context.Context, platform string, user string) (*rlstats.GetPlayerResponse, error)
}

func GetRankString(ctx context.Context, client playerClient, platform string, user string, format string) (string, error) {
	res, err := client.GetPlayer(ctx, platform, user)
	if err != nil {
		log.WithField("event", "request_rlstats").WithField("user", user).Debug(err)
		return "", err
	}

	return formatRankResponse(res, format), nil
}
