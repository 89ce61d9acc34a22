/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	tserrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/storagemodels"
)

// API is the subset of the DynamoDB client the datastore calls.
type API interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[*storagemodels.GenericEntity]
// by writing each entity as one DynamoDB item.
type DynamodbDataStore struct {
	client    API
	tableName string
	logger    *slog.Logger
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	// Load the custom AWS configuration using static credentials
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for a table.
func NewDynamodbDataStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	slog.Info("DynamoDB client initialized", "table", awsDDBTableName, "region", awsRegion)
	return NewWithClient(client, awsDDBTableName), nil
}

// NewWithClient constructs a DynamodbDataStore around an existing client.
func NewWithClient(client API, tableName string) *DynamodbDataStore {
	return &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		logger:    slog.Default(),
	}
}

// WithLogger sets the logger.
func (d *DynamodbDataStore) WithLogger(logger *slog.Logger) *DynamodbDataStore {
	d.logger = logger
	return d
}

// Insert stores a new item; an existing item with the same keys is a conflict.
func (d *DynamodbDataStore) Insert(ctx context.Context, entity *storagemodels.GenericEntity) error {
	return d.put(ctx, entity, "attribute_not_exists(#pk)")
}

// Update replaces an existing item.
func (d *DynamodbDataStore) Update(ctx context.Context, entity *storagemodels.GenericEntity) error {
	return d.put(ctx, entity, "attribute_exists(#pk)")
}

func (d *DynamodbDataStore) put(ctx context.Context, entity *storagemodels.GenericEntity, condition string) error {
	schema := registry.KeySchemaFor(d.tableName)
	item, err := toItem(entity, schema)
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:                aws.String(d.tableName),
		Item:                     item,
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: map[string]string{"#pk": schema.PartitionKey},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			key := entity.PartitionKey() + "|" + entity.RowKey()
			if strings.HasPrefix(condition, "attribute_not_exists") {
				return tserrors.NewAlreadyExistsError(d.tableName, key)
			}
			return tserrors.NewNotFoundError(d.tableName, key)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Info("table write", "op", "put", "table", d.tableName, "pk", entity.PartitionKey(), "rk", entity.RowKey())
	return nil
}

// Merge sets the entity's properties on an existing item, leaving others untouched.
func (d *DynamodbDataStore) Merge(ctx context.Context, entity *storagemodels.GenericEntity) error {
	schema := registry.KeySchemaFor(d.tableName)
	item, err := toItem(entity, schema)
	if err != nil {
		return err
	}

	key := map[string]types.AttributeValue{
		schema.PartitionKey: item[schema.PartitionKey],
		schema.RowKey:       item[schema.RowKey],
	}
	delete(item, schema.PartitionKey)
	delete(item, schema.RowKey)

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(entity, item)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}
	exprAttrNames["#pk"] = schema.PartitionKey
	_, err = d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ReturnValues:              types.ReturnValueNone,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return tserrors.NewNotFoundError(d.tableName, entity.PartitionKey()+"|"+entity.RowKey())
		}
		return fmt.Errorf("UpdateItem failed: %w", err)
	}
	d.logger.Info("table write", "op", "merge", "table", d.tableName, "pk", entity.PartitionKey(), "rk", entity.RowKey())
	return nil
}

// Delete removes an item by its keys.
func (d *DynamodbDataStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	schema := registry.KeySchemaFor(d.tableName)
	_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			schema.PartitionKey: &types.AttributeValueMemberS{Value: partitionKey},
			schema.RowKey:       &types.AttributeValueMemberS{Value: rowKey},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// toItem converts entity into a DynamoDB item. Keys are written under the
// schema's attribute names; every other property must have a supported type.
func toItem(entity *storagemodels.GenericEntity, schema registry.KeySchema) (map[string]types.AttributeValue, error) {
	if entity == nil {
		return nil, tserrors.NewValidationError("entity", "must not be nil")
	}
	if entity.PartitionKey() == "" || entity.RowKey() == "" {
		return nil, tserrors.NewValidationError("key", "PartitionKey and RowKey must not be empty")
	}
	if schema.PartitionKey == "" || schema.RowKey == "" {
		return nil, tserrors.NewValidationError("keySchema", "partition and row key attribute names must not be empty")
	}

	item := make(map[string]types.AttributeValue, entity.Len())
	for _, p := range entity.Properties() {
		name := p.Name
		switch name {
		case storagemodels.PartitionKeyProperty:
			name = schema.PartitionKey
		case storagemodels.RowKeyProperty:
			name = schema.RowKey
		}

		av, err := toAttributeValue(p)
		if err != nil {
			return nil, err
		}
		item[name] = av
	}
	return item, nil
}

func toAttributeValue(p storagemodels.Property) (types.AttributeValue, error) {
	if !registry.IsSupported(p.Type) {
		return nil, tserrors.NewUnsupportedTypeError(p.Name, p.TypeName())
	}
	if p.IsNull {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}

	switch p.Type {
	case registry.Int32, registry.NullableInt32,
		registry.Int64, registry.NullableInt64,
		registry.Boolean, registry.NullableBoolean,
		registry.Binary, registry.String:
		av, err := attributevalue.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", p.Name, err)
		}
		return av, nil
	case registry.Double, registry.NullableDouble:
		if f, ok := p.Value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return &types.AttributeValueMemberS{Value: registry.FormatDouble(f)}, nil
		}
		av, err := attributevalue.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", p.Name, err)
		}
		return av, nil
	}

	// Guid, DateTime and URI are stored as their wire text.
	if enc, ok := registry.Encoder(p.Type); ok {
		text, err := enc(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode property %q: %w", p.Name, err)
		}
		return &types.AttributeValueMemberS{Value: text}, nil
	}
	return &types.AttributeValueMemberS{Value: fmt.Sprint(p.Value)}, nil
}

// buildUpdateExpression turns the non-key attributes of item into
// "SET #f0 = :v0, #f1 = :v1", keeping the entity's property order.
func buildUpdateExpression(entity *storagemodels.GenericEntity, item map[string]types.AttributeValue) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(item) == 0 {
		return "", nil, nil, errors.New("no updates provided")
	}

	setClauses := make([]string, 0, len(item))
	exprAttrNames := make(map[string]string)
	exprAttrValues := make(map[string]types.AttributeValue)

	i := 0
	for _, p := range entity.Properties() {
		av, ok := item[p.Name]
		if !ok {
			continue
		}
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = p.Name
		exprAttrValues[placeholderValue] = av
		i++
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}
