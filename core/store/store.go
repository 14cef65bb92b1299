package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

const (
	// batchMax is the DynamoDB limit on items per BatchWriteItem call.
	batchMax = 25
	// batchRetries bounds the retry loop for unprocessed batch items.
	batchRetries = 8
)

// Key identifies a single item by its primary key attribute.
type Key map[string]types.AttributeValue

// StrKey builds a string-typed primary key.
func StrKey(name, value string) Key {
	return Key{name: &types.AttributeValueMemberS{Value: value}}
}

// NumKey builds a number-typed primary key.
func NumKey(name string, value int64) Key {
	return Key{name: &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)}}
}

// UpdateMode selects the precondition applied to an Update call.
type UpdateMode int

const (
	// Upsert writes the attributes whether or not the item exists,
	// creating it if necessary.
	Upsert UpdateMode = iota
	// ExistingOnly requires the item to exist; updating a missing item
	// fails with ErrNotFound instead of creating a phantom record.
	ExistingOnly
)

// Store executes operations against the backing tables. It is constructed
// once and injected into every component that reads or writes world data.
type Store struct {
	api    API
	logger *zap.Logger
}

// New creates a Store over the given API client.
func New(api API, logger *zap.Logger) *Store {
	return &Store{api: api, logger: logger}
}

// Get fetches a single item by primary key and decodes it into out.
// It returns ErrNotFound when the item does not exist.
func (s *Store) Get(ctx context.Context, table string, key Key, out any) error {
	res, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from %s: %w", table, err)
	}
	if len(res.Item) == 0 {
		return fmt.Errorf("table %s: %w", table, ErrNotFound)
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("failed to decode item from %s: %w", table, err)
	}
	return nil
}

// Scan reads the complete table into out, which must be a pointer to a
// slice. Paging is handled internally until the table is exhausted.
func (s *Store) Scan(ctx context.Context, table string, out any) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		res, err := s.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", table, err)
		}
		items = append(items, res.Items...)
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		startKey = res.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to decode items from %s: %w", table, err)
	}
	return nil
}

// Put writes the full item, overwriting any existing item with the same key.
func (s *Store) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to encode item for %s: %w", table, err)
	}
	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put item into %s: %w", table, err)
	}
	return nil
}

// Delete removes a single item by primary key. Deleting a missing item is
// not an error.
func (s *Store) Delete(ctx context.Context, table string, key Key) error {
	if _, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	}); err != nil {
		return fmt.Errorf("failed to delete item from %s: %w", table, err)
	}
	return nil
}

// Update applies a partial SET update to the attributes named in sets.
// With ExistingOnly the update is conditioned on the item existing and
// fails with ErrNotFound otherwise.
func (s *Store) Update(ctx context.Context, table string, key Key, sets map[string]any, mode UpdateMode) error {
	if len(sets) == 0 {
		return fmt.Errorf("failed to update item in %s: no attributes to set", table)
	}

	// Deterministic expression ordering
	fields := make([]string, 0, len(sets))
	for f := range sets {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	names := make(map[string]string, len(fields)+1)
	values := make(map[string]types.AttributeValue, len(fields))
	parts := make([]string, 0, len(fields))

	for i, f := range fields {
		av, err := attributevalue.Marshal(sets[f])
		if err != nil {
			return fmt.Errorf("failed to encode attribute %s for %s: %w", f, table, err)
		}
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)
		names[nameRef] = f
		values[valueRef] = av
		parts = append(parts, nameRef+" = "+valueRef)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          aws.String("SET " + strings.Join(parts, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	if mode == ExistingOnly {
		keyRef := fmt.Sprintf("#f%d", len(fields))
		for attr := range key {
			names[keyRef] = attr
		}
		input.ConditionExpression = aws.String("attribute_exists(" + keyRef + ")")
	}

	if _, err := s.api.UpdateItem(ctx, input); err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return fmt.Errorf("table %s: %w", table, ErrNotFound)
		}
		return fmt.Errorf("failed to update item in %s: %w", table, err)
	}
	return nil
}

// BatchPut writes the given items in chunks of the store's batch limit.
// Unprocessed items are retried with exponential backoff; if retries are
// exhausted the whole call fails.
func (s *Store) BatchPut(ctx context.Context, table string, items []any) error {
	if len(items) == 0 {
		return nil
	}

	requests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("failed to encode item for %s: %w", table, err)
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	for start := 0; start < len(requests); start += batchMax {
		end := start + batchMax
		if end > len(requests) {
			end = len(requests)
		}
		if err := s.writeBatch(ctx, table, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeBatch issues one BatchWriteItem call and keeps retrying whatever the
// store reports as unprocessed.
func (s *Store) writeBatch(ctx context.Context, table string, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{table: requests}

	for attempt := 0; ; attempt++ {
		res, err := s.api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to batch write to %s: %w", table, err)
		}
		if len(res.UnprocessedItems) == 0 {
			return nil
		}
		if attempt >= batchRetries {
			return fmt.Errorf("failed to batch write to %s: %d items unprocessed after %d retries",
				table, len(res.UnprocessedItems[table]), attempt)
		}

		delay := time.Duration(10*(1<<attempt)) * time.Millisecond
		s.logger.Warn("Retrying unprocessed batch items",
			zap.String("table", table),
			zap.Int("count", len(res.UnprocessedItems[table])),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to batch write to %s: %w", table, ctx.Err())
		case <-time.After(delay):
		}
		pending = res.UnprocessedItems
	}
}
