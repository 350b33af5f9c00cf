package table

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/plaza-dev/plaza/shared/domain"
)

// PutNotice writes the notice, replacing any notice with the same id.
func (s *Store) PutNotice(ctx context.Context, notice domain.Notice) error {
	item, err := attributevalue.MarshalMap(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.noticeTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put notice: %w", err)
	}
	return nil
}

// ListNotices returns up to limit active notices of one category for
// memberId, newest first. The time index is read backwards and paging stops
// as soon as limit notices survived the filter.
func (s *Store) ListNotices(ctx context.Context, memberId domain.MemberId, category domain.NoticeCategory, limit int) ([]domain.Notice, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.noticeTable),
		IndexName:              aws.String(noticeTimeIndex),
		KeyConditionExpression: aws.String("MemberId = :m"),
		FilterExpression:       aws.String("#category = :c AND IsActive = :active"),
		ExpressionAttributeNames: map[string]string{
			"#category": "Category",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m":      &types.AttributeValueMemberS{Value: memberId},
			":c":      &types.AttributeValueMemberS{Value: category},
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	notices := []domain.Notice{}
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() && (limit <= 0 || len(notices) < limit) {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query notices: %w", err)
		}
		var batch []domain.Notice
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notices: %w", err)
		}
		notices = append(notices, batch...)
	}

	if limit > 0 && len(notices) > limit {
		notices = notices[:limit]
	}
	return notices, nil
}
