// Package table keeps notices, blocking and follow records in DynamoDB. All
// tables use the member id as partition key: notices are sorted by notice id
// (with a local index on CreatedTime), mappings by the other member's id.
package table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/logger"
)

// API is the subset of the DynamoDB client the store needs.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// noticeTimeIndex orders a member's notices by CreatedTime.
const noticeTimeIndex = "CreatedTimeIndex"

type Store struct {
	client        API
	noticeTable   string
	blockingTable string
	followTable   string
}

func New(client API, cfg config.Table) *Store {
	return &Store{
		client:        client,
		noticeTable:   cfg.NoticeTable,
		blockingTable: cfg.BlockingTable,
		followTable:   cfg.FollowTable,
	}
}

// NewClient builds a DynamoDB client. Static credentials are used when both
// keys are configured, otherwise the default AWS chain applies.
func NewClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Public.Table.Region),
	}
	if cfg.Private.AwsAccessKey != "" && cfg.Private.AwsSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Private.AwsAccessKey, cfg.Private.AwsSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := cfg.Public.Table.Endpoint
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// EnsureTables creates missing tables and waits until they are active. The
// notice time index can only be added at creation, so tables created by an
// older release must be recreated.
func (s *Store) EnsureTables(ctx context.Context) error {
	notices := tableInput(s.noticeTable, "MemberId", "NoticeId")
	notices.AttributeDefinitions = append(notices.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String("CreatedTime"), AttributeType: types.ScalarAttributeTypeN,
	})
	notices.LocalSecondaryIndexes = []types.LocalSecondaryIndex{{
		IndexName: aws.String(noticeTimeIndex),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("MemberId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("CreatedTime"), KeyType: types.KeyTypeRange},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}

	for _, input := range []*dynamodb.CreateTableInput{
		notices,
		tableInput(s.blockingTable, "MemberId", "BlockedId"),
		tableInput(s.followTable, "MemberId", "FollowedId"),
	} {
		if err := s.ensureTable(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func tableInput(name, partitionKey, sortKey string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(partitionKey), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(sortKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(partitionKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

func (s *Store) ensureTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	name := aws.ToString(input.TableName)
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe table %s: %w", name, err)
	}

	logger.Log.Info("creating table", "table", name)
	if _, err := s.client.CreateTable(ctx, input); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, 2*time.Minute); err != nil {
		return fmt.Errorf("failed waiting for table %s: %w", name, err)
	}
	return nil
}

// Ping checks that the notice table is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.noticeTable)})
	return err
}
