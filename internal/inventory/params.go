package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ParameterAPI is the minimal interface for parameter-store operations.
type ParameterAPI interface {
	GetParameter(ctx context.Context, input *ssm.GetParameterInput, opts ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DescribeParameters(ctx context.Context, input *ssm.DescribeParametersInput, opts ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
	PutParameter(ctx context.Context, input *ssm.PutParameterInput, opts ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// ParameterFetcher queries and writes workspace parameter-store entries.
type ParameterFetcher struct {
	client ParameterAPI
}

// NewParameterFetcher creates a fetcher for parameter-store state.
func NewParameterFetcher(client ParameterAPI) *ParameterFetcher {
	return &ParameterFetcher{client: client}
}

// ConfigPath returns the read-only workspace config parameter path.
func ConfigPath(project, workspace string) string {
	return fmt.Sprintf("/%s/%s/config", project, workspace)
}

// StatusPath returns the workspace status parameter path.
func StatusPath(project, workspace string) string {
	return fmt.Sprintf("/%s/%s/status", project, workspace)
}

// Parameters returns the workspace's parameter-store state. An absent config
// parameter is a valid state, not an error.
func (f *ParameterFetcher) Parameters(ctx context.Context, project, workspace string) (ParameterState, error) {
	var state ParameterState

	out, err := f.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: awssdk.String(ConfigPath(project, workspace)),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if !errors.As(err, &notFound) {
			return state, fmt.Errorf("get workspace config parameter: %w", err)
		}
	} else if out.Parameter != nil {
		state.ConfigExists = true
		state.ConfigVersion = out.Parameter.Version
		if out.Parameter.LastModifiedDate != nil {
			state.ConfigLastModified = *out.Parameter.LastModifiedDate
		}

		var data map[string]any
		if err := json.Unmarshal([]byte(deref(out.Parameter.Value)), &data); err == nil {
			state.ConfigData = data
			state.ConfigValid = true
		}
	}

	prefix := fmt.Sprintf("/%s/%s/", project, workspace)
	params, err := f.client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
		ParameterFilters: []ssmtypes.ParameterStringFilter{
			{
				Key:    awssdk.String("Name"),
				Option: awssdk.String("BeginsWith"),
				Values: []string{prefix},
			},
		},
	})
	if err != nil {
		return state, fmt.Errorf("describe workspace parameters: %w", err)
	}

	for _, p := range params.Parameters {
		entry := Parameter{
			Name:    deref(p.Name),
			Type:    string(p.Type),
			Version: p.Version,
		}
		if p.LastModifiedDate != nil {
			entry.LastModified = *p.LastModifiedDate
		}
		state.Parameters = append(state.Parameters, entry)
	}
	// DescribeParameters ordering is not documented; keep the report stable
	sort.Slice(state.Parameters, func(i, j int) bool {
		return state.Parameters[i].Name < state.Parameters[j].Name
	})

	return state, nil
}

// PutStatus overwrites the workspace status parameter. Last writer wins;
// there is no optimistic concurrency check.
func (f *ParameterFetcher) PutStatus(ctx context.Context, project, workspace, value string) error {
	_, err := f.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:        awssdk.String(StatusPath(project, workspace)),
		Value:       awssdk.String(value),
		Type:        ssmtypes.ParameterTypeString,
		Overwrite:   awssdk.Bool(true),
		Description: awssdk.String(fmt.Sprintf("Workspace status for %s", workspace)),
	})
	if err != nil {
		return fmt.Errorf("put status parameter: %w", err)
	}
	return nil
}
