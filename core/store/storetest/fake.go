// Package storetest provides an in-memory implementation of the store API
// interface for protocol-level tests. It honors the parts of the wire
// contract the store adapter depends on: key-based lookups, scan paging via
// LastEvaluatedKey, unprocessed batch items, and conditional updates.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Fake is an in-memory table store. The zero value is not usable; call New.
type Fake struct {
	mu     sync.Mutex
	tables map[string]*table

	// PageSize caps the number of items per Scan page. Zero disables paging.
	PageSize int
	// UnprocessedOnce makes the next BatchWriteItem report every item as
	// unprocessed once before accepting writes, exercising the retry path.
	UnprocessedOnce bool
	// Errs injects an error per API method name (e.g. "PutItem").
	Errs map[string]error
	// Calls counts invocations per API method name.
	Calls map[string]int
}

type table struct {
	keyAttr string
	items   map[string]map[string]types.AttributeValue
}

// New creates an empty fake store.
func New() *Fake {
	return &Fake{
		tables: make(map[string]*table),
		Errs:   make(map[string]error),
		Calls:  make(map[string]int),
	}
}

// CreateTable registers a table with a single-attribute primary key.
func (f *Fake) CreateTable(name, keyAttr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{
		keyAttr: keyAttr,
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// Len returns the number of items in a table.
func (f *Fake) Len(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[name]
	if !ok {
		return 0
	}
	return len(t.items)
}

// Has reports whether a table holds an item under the given key string.
func (f *Fake) Has(name, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[name]
	if !ok {
		return false
	}
	_, ok = t.items[key]
	return ok
}

// Raw returns the stored attribute map for a key, or nil.
func (f *Fake) Raw(name, key string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[name]
	if !ok {
		return nil
	}
	return clone(t.items[key])
}

func (f *Fake) hit(method string) error {
	f.Calls[method]++
	return f.Errs[method]
}

func (f *Fake) table(name *string) (*table, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String("Requested resource not found: Table: " + aws.ToString(name)),
		}
	}
	return t, nil
}

func keyString(av types.AttributeValue) string {
	switch k := av.(type) {
	case *types.AttributeValueMemberS:
		return k.Value
	case *types.AttributeValueMemberN:
		return k.Value
	default:
		return ""
	}
}

func clone(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (t *table) sortedKeys() []string {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetItem implements store.API.
func (f *Fake) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetItem"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	key := keyString(params.Key[t.keyAttr])
	return &dynamodb.GetItemOutput{Item: clone(t.items[key])}, nil
}

// PutItem implements store.API.
func (f *Fake) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("PutItem"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	t.items[keyString(params.Item[t.keyAttr])] = clone(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// DeleteItem implements store.API.
func (f *Fake) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DeleteItem"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	delete(t.items, keyString(params.Key[t.keyAttr]))
	return &dynamodb.DeleteItemOutput{}, nil
}

// UpdateItem implements store.API. It understands the SET expressions the
// store adapter builds and the attribute_exists condition.
func (f *Fake) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("UpdateItem"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}

	key := keyString(params.Key[t.keyAttr])
	item, exists := t.items[key]

	if cond := aws.ToString(params.ConditionExpression); cond != "" {
		ref := strings.TrimSuffix(strings.TrimPrefix(cond, "attribute_exists("), ")")
		attr := params.ExpressionAttributeNames[ref]
		if !exists || item[attr] == nil {
			return nil, &types.ConditionalCheckFailedException{
				Message: aws.String("The conditional request failed"),
			}
		}
	}

	updated := clone(item)
	if updated == nil {
		updated = clone(params.Key)
	}

	expr := strings.TrimPrefix(aws.ToString(params.UpdateExpression), "SET ")
	for _, part := range strings.Split(expr, ", ") {
		refs := strings.SplitN(part, " = ", 2)
		if len(refs) != 2 {
			return nil, fmt.Errorf("ValidationException: invalid update expression %q", part)
		}
		attr := params.ExpressionAttributeNames[refs[0]]
		updated[attr] = params.ExpressionAttributeValues[refs[1]]
	}
	t.items[key] = updated

	return &dynamodb.UpdateItemOutput{Attributes: clone(updated)}, nil
}

// Scan implements store.API with deterministic ordering and optional paging.
func (f *Fake) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("Scan"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}

	keys := t.sortedKeys()
	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		after := keyString(params.ExclusiveStartKey[t.keyAttr])
		for i, k := range keys {
			if k == after {
				start = i + 1
				break
			}
		}
	}

	end := len(keys)
	if f.PageSize > 0 && start+f.PageSize < end {
		end = start + f.PageSize
	}

	out := &dynamodb.ScanOutput{Count: int32(end - start)}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, clone(t.items[k]))
	}
	if end < len(keys) {
		last := t.items[keys[end-1]]
		out.LastEvaluatedKey = map[string]types.AttributeValue{t.keyAttr: last[t.keyAttr]}
	}
	return out, nil
}

// BatchWriteItem implements store.API, including the unprocessed-items
// behavior of the real service.
func (f *Fake) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("BatchWriteItem"); err != nil {
		return nil, err
	}

	if f.UnprocessedOnce {
		f.UnprocessedOnce = false
		return &dynamodb.BatchWriteItemOutput{UnprocessedItems: params.RequestItems}, nil
	}

	for name, requests := range params.RequestItems {
		t, err := f.table(aws.String(name))
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(requests))
		for _, req := range requests {
			switch {
			case req.PutRequest != nil:
				key := keyString(req.PutRequest.Item[t.keyAttr])
				if seen[key] {
					return nil, fmt.Errorf("ValidationException: provided list of item keys contains duplicates")
				}
				seen[key] = true
				t.items[key] = clone(req.PutRequest.Item)
			case req.DeleteRequest != nil:
				delete(t.items, keyString(req.DeleteRequest.Key[t.keyAttr]))
			}
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

// ListTables implements store.API.
func (f *Fake) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ListTables"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return &dynamodb.ListTablesOutput{TableNames: names}, nil
}

// DescribeTable implements store.API.
func (f *Fake) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DescribeTable"); err != nil {
		return nil, err
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}

	keyType := types.ScalarAttributeTypeS
	for _, item := range t.items {
		if _, ok := item[t.keyAttr].(*types.AttributeValueMemberN); ok {
			keyType = types.ScalarAttributeTypeN
		}
		break
	}

	count := int64(len(t.items))
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
			ItemCount:   &count,
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(t.keyAttr), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(t.keyAttr), AttributeType: keyType},
			},
		},
	}, nil
}
