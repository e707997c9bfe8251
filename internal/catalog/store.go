package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/aws"
	"github.com/baguskharisma/pos-system-sub000/internal/cart"
)

// ErrInsufficientStock indicates the conditional decrement found less
// stock than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

type record struct {
	ProductID      string `dynamodbav:"product_id"` // PK
	Name           string `dynamodbav:"name"`
	Price          string `dynamodbav:"price"`
	TrackInventory bool   `dynamodbav:"track_inventory"`
	Quantity       int    `dynamodbav:"quantity"`
}

// Store supplies products to the cart engine and owns the one stock write
// in the system: the atomic decrement at payment confirmation.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*cart.Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var r record
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", r.Price, err)
	}
	return &cart.Product{
		ID:             r.ProductID,
		Name:           r.Name,
		Price:          price,
		TrackInventory: r.TrackInventory,
		Quantity:       r.Quantity,
	}, nil
}

// Put creates or replaces a product. Back-office use.
func (s *Store) Put(ctx context.Context, p *cart.Product) error {
	item, err := attributevalue.MarshalMap(record{
		ProductID:      p.ID,
		Name:           p.Name,
		Price:          p.Price.String(),
		TrackInventory: p.TrackInventory,
		Quantity:       p.Quantity,
	})
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// DecrementStock atomically subtracts quantity from a tracked product.
// The read-modify-write happens inside DynamoDB: the condition
// quantity >= :n means two concurrent confirmations can never drive the
// stock negative. Untracked products must not be passed here.
func (s *Store) DecrementStock(ctx context.Context, productID string, quantity int) error {
	qty := strconv.Itoa(quantity)
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression:    awsString("SET quantity = quantity - :n"),
		ConditionExpression: awsString("attribute_exists(product_id) AND quantity >= :n"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberN{Value: qty},
		},
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrInsufficientStock
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DecrementOrderItems decrements stock for every tracked line item of a
// confirmed order. Untracked items are skipped.
func (s *Store) DecrementOrderItems(ctx context.Context, items []cart.LineItem) error {
	for _, li := range items {
		if !li.Tracked {
			continue
		}
		if err := s.DecrementStock(ctx, li.ProductID, li.Quantity); err != nil {
			return fmt.Errorf("decrement %s: %w", li.ProductID, err)
		}
	}
	return nil
}

func awsString(s string) *string { return &s }
