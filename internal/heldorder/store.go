package heldorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/baguskharisma/pos-system-sub000/internal/aws"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
)

// ErrAlreadyHeld indicates a held-order id collision on create.
var ErrAlreadyHeld = errors.New("held order already exists")

// Store encapsulates held-order snapshots in DynamoDB.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration // how long a hold survives before the table TTL reaps it
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
// tableName: DynamoDB table name for held orders.
// ttlWindow: retention window for unrecalled holds (e.g. 24*time.Hour).
func NewStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// Create persists the snapshot if its id is not taken yet.
func (s *Store) Create(ctx context.Context, h *order.HeldOrder) error {
	expires := s.nowFunc().Add(s.ttlWindow).Unix()
	item, err := attributevalue.MarshalMap(toRecord(h, expires))
	if err != nil {
		return fmt.Errorf("marshal held order: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(held_id)"),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return ErrAlreadyHeld
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches a held order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, heldID string) (*order.HeldOrder, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"held_id": &types.AttributeValueMemberS{Value: heldID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var r heldRecord
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, fmt.Errorf("unmarshal held order: %w", err)
	}
	return fromRecord(r)
}

// Delete removes a held order, e.g. after recall or explicit discard.
// Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, heldID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"held_id": &types.AttributeValueMemberS{Value: heldID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List returns all current holds. The table stays small (a register's
// worth of parked carts), so a scan is fine.
func (s *Store) List(ctx context.Context) ([]*order.HeldOrder, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	held := make([]*order.HeldOrder, 0, len(out.Items))
	for _, item := range out.Items {
		var r heldRecord
		if err := attributevalue.UnmarshalMap(item, &r); err != nil {
			return nil, fmt.Errorf("unmarshal held order: %w", err)
		}
		h, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		held = append(held, h)
	}
	return held, nil
}

func awsString(s string) *string { return &s }
