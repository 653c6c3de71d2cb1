package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBLedger records completed partitions of a run in DynamoDB.
//
// A conditional write makes Complete idempotent: the first writer wins and
// later writers for the same (run, partition) observe success.
//
// Table schema:
//   - Partition key: run_id (string)
//   - Sort key: partition (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name relterm-partitions \
//	  --attribute-definitions AttributeName=run_id,AttributeType=S AttributeName=partition,AttributeType=N \
//	  --key-schema AttributeName=run_id,KeyType=HASH AttributeName=partition,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBLedger struct {
	client    DDBClient
	tableName string
	now       func() time.Time
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// NewDDBLedger creates a ledger backed by the given table.
func NewDDBLedger(client DDBClient, tableName string) *DDBLedger {
	return &DDBLedger{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

func (l *DDBLedger) key(runID string, index int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"run_id":    &types.AttributeValueMemberS{Value: runID},
		"partition": &types.AttributeValueMemberN{Value: strconv.Itoa(index)},
	}
}

// Completed reports whether the partition was recorded as done.
func (l *DDBLedger) Completed(ctx context.Context, runID string, index int) (bool, error) {
	resp, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(l.tableName),
		Key:            l.key(runID, index),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	return len(resp.Item) > 0, nil
}

// Complete records the partition as done.
func (l *DDBLedger) Complete(ctx context.Context, runID string, index int, output string) error {
	item := l.key(runID, index)
	item["output"] = &types.AttributeValueMemberS{Value: output}
	item["completed_at"] = &types.AttributeValueMemberS{Value: l.now().UTC().Format(time.RFC3339)}

	_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(run_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil
		}
		return fmt.Errorf("failed to record partition in DynamoDB: %w", err)
	}
	return nil
}
