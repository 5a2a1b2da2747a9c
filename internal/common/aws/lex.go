package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
)

func NewLexRuntimeClient(ctx context.Context, region string) (*lexruntimev2.Client, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return lexruntimev2.NewFromConfig(cfg), nil
}
