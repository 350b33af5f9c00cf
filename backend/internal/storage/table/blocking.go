package table

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/plaza-dev/plaza/shared/domain"
)

// IsBlocked reports whether blocker has an active blocking record for blocked.
func (s *Store) IsBlocked(ctx context.Context, blocker, blocked domain.MemberId) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.blockingTable),
		Key: map[string]types.AttributeValue{
			"MemberId":  &types.AttributeValueMemberS{Value: blocker},
			"BlockedId": &types.AttributeValueMemberS{Value: blocked},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to get blocking record: %w", err)
	}
	if len(out.Item) == 0 {
		return false, nil
	}

	var record domain.BlockingRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return false, fmt.Errorf("failed to unmarshal blocking record: %w", err)
	}
	return record.IsActive, nil
}

// SetBlocking writes the blocking record. Unblocking keeps the row inactive.
func (s *Store) SetBlocking(ctx context.Context, blocker, blocked domain.MemberId, active bool) error {
	item, err := attributevalue.MarshalMap(domain.BlockingRecord{
		MemberId:  blocker,
		BlockedId: blocked,
		IsActive:  active,
		UpdatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal blocking record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.blockingTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put blocking record: %w", err)
	}
	return nil
}
