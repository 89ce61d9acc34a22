/*
Package config loads tablestore configuration from YAML and the environment.

A config file selects a backend and lists the tables to register:

	backend: azure
	logLevel: debug
	azure:
	  account: myaccount
	  key: c2VjcmV0
	tables:
	  - name: Customers
	  - name: Players
	    keySchema:
	      partitionKey: PK
	      rowKey: SK

Load first reads .env files with godotenv, then the YAML file, then applies
environment overrides (TABLESTORE_BACKEND, TABLESTORE_LOG_LEVEL,
TABLESTORE_TABLES, AZURE_STORAGE_ACCOUNT, AZURE_STORAGE_KEY,
AZURE_TABLE_ENDPOINT, AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_REGION).
*/
package config
