package secret

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Store looks up secret values by name.
type Store interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// ParameterAPI is the subset of the SSM client used by SSMStore.
type ParameterAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMStore reads SecureString parameters from SSM Parameter Store.
type SSMStore struct {
	api ParameterAPI
}

func NewSSMStore(api ParameterAPI) *SSMStore {
	return &SSMStore{api: api}
}

// LoadSSMStore builds an SSMStore from the default AWS credential chain.
func LoadSSMStore(ctx context.Context) (*SSMStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewSSMStore(ssm.NewFromConfig(cfg)), nil
}

// Lookup fetches the parameter called name, always decrypted.
func (s *SSMStore) Lookup(ctx context.Context, name string) (string, error) {
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("getting parameter %q: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
