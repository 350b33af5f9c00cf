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

func (s *Store) IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.followTable),
		Key: map[string]types.AttributeValue{
			"MemberId":   &types.AttributeValueMemberS{Value: follower},
			"FollowedId": &types.AttributeValueMemberS{Value: followed},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to get follow record: %w", err)
	}
	return followActive(out.Item)
}

// SetFollowing writes the follow record and returns the state it replaced,
// so callers can tell a change from a repeat.
func (s *Store) SetFollowing(ctx context.Context, follower, followed domain.MemberId, active bool) (bool, error) {
	item, err := attributevalue.MarshalMap(domain.FollowRecord{
		MemberId:   follower,
		FollowedId: followed,
		IsActive:   active,
		UpdatedAt:  time.Now().UnixMilli(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal follow record: %w", err)
	}
	out, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:    aws.String(s.followTable),
		Item:         item,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to put follow record: %w", err)
	}
	return followActive(out.Attributes)
}

func followActive(item map[string]types.AttributeValue) (bool, error) {
	if len(item) == 0 {
		return false, nil
	}
	var record domain.FollowRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return false, fmt.Errorf("failed to unmarshal follow record: %w", err)
	}
	return record.IsActive, nil
}
