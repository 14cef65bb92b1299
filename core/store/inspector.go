package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableInfo summarizes a table's key schema and row count.
type TableInfo struct {
	Name         string `json:"name"`
	KeyAttribute string `json:"key_attribute"`
	KeyType      string `json:"key_type"`
	Status       string `json:"status"`
	ItemCount    int64  `json:"item_count"`
}

// ListTables returns the names of every table visible to the client.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	var start *string

	for {
		res, err := s.api.ListTables(ctx, &dynamodb.ListTablesInput{
			ExclusiveStartTableName: start,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}
		names = append(names, res.TableNames...)
		if res.LastEvaluatedTableName == nil {
			break
		}
		start = res.LastEvaluatedTableName
	}
	return names, nil
}

// DescribeTable returns the key schema summary for a table.
// It returns ErrNotFound when the table does not exist.
func (s *Store) DescribeTable(ctx context.Context, table string) (*TableInfo, error) {
	res, err := s.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("table %s: %w", table, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}

	desc := res.Table
	info := &TableInfo{
		Name:   aws.ToString(desc.TableName),
		Status: string(desc.TableStatus),
	}
	if desc.ItemCount != nil {
		info.ItemCount = *desc.ItemCount
	}

	// Single-attribute primary keys only; the world tables define no sort keys.
	for _, k := range desc.KeySchema {
		if k.KeyType == types.KeyTypeHash {
			info.KeyAttribute = aws.ToString(k.AttributeName)
		}
	}
	for _, a := range desc.AttributeDefinitions {
		if aws.ToString(a.AttributeName) == info.KeyAttribute {
			info.KeyType = string(a.AttributeType)
		}
	}

	return info, nil
}
