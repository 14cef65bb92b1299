// Package mocks contains testify mocks for the store package interfaces.
package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of store.API.
type API struct {
	mock.Mock
}

func (m *API) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.GetItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.PutItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.DeleteItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.UpdateItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.ScanOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.BatchWriteItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.ListTablesOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.DescribeTableOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
