/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store implements docstore.DocumentStore on a single DynamoDB table, so a
// document's block registry can live in shared storage instead of (or beside)
// the host's own string table.
//
// Key layout (single-table):
//
//	PK: DOC#<documentID>
//	SK: SEC#<section>#KEY#<key>   document-level values
//	SK: OBJ#<objectID>#KEY#<key>  per-object values
type Store struct {
	client     *sdk.Client
	tableName  string
	documentID string
}

// metadataItem is the stored shape of one key/value pair.
type metadataItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Key   string `dynamodbav:"ItemKey"`
	Value string `dynamodbav:"Value"`
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	// Load the custom AWS configuration using static credentials
	cfg, err := config.LoadDefaultConfig(context.TODO(),
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

// NewStore constructs a Store for one host document.
func NewStore(awsAccessKey, awsSecretKey, awsRegion, tableName, documentID string) (*Store, error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewStoreWithClient(client, tableName, documentID), nil
}

// NewStoreWithClient constructs a Store around an existing client.
func NewStoreWithClient(client *sdk.Client, tableName, documentID string) *Store {
	return &Store{
		client:     client,
		tableName:  tableName,
		documentID: documentID,
	}
}

func (s *Store) pk() string {
	return "DOC#" + s.documentID
}

func sectionSK(section, key string) string {
	return "SEC#" + section + "#KEY#" + key
}

func sectionPrefix(section string) string {
	return "SEC#" + section + "#KEY#"
}

func objectSK(objectID, key string) string {
	return "OBJ#" + objectID + "#KEY#" + key
}

func objectPrefix(objectID string) string {
	return "OBJ#" + objectID + "#KEY#"
}

func (s *Store) keyMap(sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: s.pk()},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func (s *Store) getItem(ctx context.Context, sk string) (string, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       s.keyMap(sk),
	})
	if err != nil {
		return "", fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		// Absent keys read as empty, matching host string tables.
		return "", nil
	}

	var item metadataItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item.Value, nil
}

func (s *Store) putItem(ctx context.Context, sk, key, value string) error {
	av, err := attributevalue.MarshalMap(metadataItem{
		PK:    s.pk(),
		SK:    sk,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

func (s *Store) deleteItem(ctx context.Context, sk string) error {
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key:       s.keyMap(sk),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// queryPrefix returns all items under this document whose SK begins with prefix.
func (s *Store) queryPrefix(ctx context.Context, prefix string) ([]metadataItem, error) {
	keyCond := "PK = :pkVal AND begins_with(SK, :skPrefix)"
	exprVals := map[string]types.AttributeValue{
		":pkVal":    &types.AttributeValueMemberS{Value: s.pk()},
		":skPrefix": &types.AttributeValueMemberS{Value: prefix},
	}

	var items []metadataItem
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &sdk.QueryInput{
			TableName:                 &s.tableName,
			KeyConditionExpression:    &keyCond,
			ExpressionAttributeValues: exprVals,
			ExclusiveStartKey:         startKey,
			ScanIndexForward:          aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}

		for _, raw := range out.Items {
			var item metadataItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			items = append(items, item)
		}

		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// GetValue reads a document-level value from a section.
func (s *Store) GetValue(ctx context.Context, section, key string) (string, error) {
	return s.getItem(ctx, sectionSK(section, key))
}

// SetValue writes a document-level value into a section.
func (s *Store) SetValue(ctx context.Context, section, key, value string) error {
	return s.putItem(ctx, sectionSK(section, key), key, value)
}

// DeleteValue removes a document-level key from a section.
func (s *Store) DeleteValue(ctx context.Context, section, key string) error {
	return s.deleteItem(ctx, sectionSK(section, key))
}

// ListKeys returns the keys of a section in ascending order.
func (s *Store) ListKeys(ctx context.Context, section string) ([]string, error) {
	items, err := s.queryPrefix(ctx, sectionPrefix(section))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys, nil
}

// GetObjectValue reads a value attached to an object.
func (s *Store) GetObjectValue(ctx context.Context, objectID, key string) (string, error) {
	return s.getItem(ctx, objectSK(objectID, key))
}

// SetObjectValue attaches a value to an object.
func (s *Store) SetObjectValue(ctx context.Context, objectID, key, value string) error {
	return s.putItem(ctx, objectSK(objectID, key), key, value)
}

// DeleteObject removes all values attached to an object.
func (s *Store) DeleteObject(ctx context.Context, objectID string) error {
	items, err := s.queryPrefix(ctx, objectPrefix(objectID))
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.deleteItem(ctx, item.SK); err != nil {
			return err
		}
	}
	return nil
}
