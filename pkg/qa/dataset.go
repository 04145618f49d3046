// Package qa 提供人工整理的问答数据集和问题匹配器
package qa

// Entry 数据集中的一条问答记录
//
// 数据集在启动时一次性载入且不可变；
// 条目顺序参与匹配平局的确定性裁决，不能改变。
type Entry struct {
	// ID 条目标识
	ID int `json:"id"`
	// Question 标准问题
	Question string `json:"question"`
	// ReferenceAnswer 参考答案
	ReferenceAnswer string `json:"reference_answer"`
	// Category 问题分类
	Category string `json:"category"`
	// RelevantDocs 相关文档标识
	RelevantDocs []string `json:"relevant_docs"`
}

// Dataset 返回内置的 PostgreSQL 问答数据集副本
func Dataset() []Entry {
	entries := make([]Entry, len(dataset))
	copy(entries, dataset)
	return entries
}

var dataset = []Entry{
	{
		ID:              1,
		Question:        "How do I create a simple index on a single column in PostgreSQL?",
		ReferenceAnswer: "Use the CREATE INDEX command with the syntax: CREATE INDEX index_name ON table_name (column_name);",
		Category:        "DDL",
		RelevantDocs:    []string{"sql-create-index"},
	},
	{
		ID:              2,
		Question:        "What is the difference between TRUNCATE and DELETE in PostgreSQL?",
		ReferenceAnswer: "TRUNCATE removes all rows from a table quickly without scanning the table, cannot be rolled back in some cases, and resets sequences. DELETE scans and removes rows one by one, can have a WHERE clause, can be rolled back, and doesn't reset sequences.",
		Category:        "DML",
		RelevantDocs:    []string{"sql-truncate", "sql-delete"},
	},
	{
		ID:              3,
		Question:        "How do I grant SELECT privileges on a table to a user?",
		ReferenceAnswer: "Use the GRANT command: GRANT SELECT ON table_name TO user_name;",
		Category:        "Security",
		RelevantDocs:    []string{"sql-grant"},
	},
	{
		ID:              4,
		Question:        "What is MVCC in PostgreSQL?",
		ReferenceAnswer: "MVCC (Multi-Version Concurrency Control) is PostgreSQL's method of handling concurrent transactions. It allows multiple transactions to access the same data simultaneously without blocking by maintaining multiple versions of rows.",
		Category:        "Concepts",
		RelevantDocs:    []string{"mvcc"},
	},
	{
		ID:              5,
		Question:        "How do I start a transaction in PostgreSQL?",
		ReferenceAnswer: "Use the BEGIN command to start a transaction block. You can also use START TRANSACTION.",
		Category:        "Transactions",
		RelevantDocs:    []string{"sql-begin"},
	},
	{
		ID:              6,
		Question:        "What is the purpose of the EXPLAIN command?",
		ReferenceAnswer: "EXPLAIN shows the execution plan for a SQL statement, displaying how tables will be scanned, which indexes will be used, and estimated costs. It helps analyze and optimize query performance.",
		Category:        "Performance",
		RelevantDocs:    []string{"sql-explain"},
	},
	{
		ID:              7,
		Question:        "How do I add a new column to an existing table?",
		ReferenceAnswer: "Use ALTER TABLE with ADD COLUMN: ALTER TABLE table_name ADD COLUMN column_name data_type;",
		Category:        "DDL",
		RelevantDocs:    []string{"sql-alter-table"},
	},
	{
		ID:              8,
		Question:        "What is the difference between a view and a materialized view?",
		ReferenceAnswer: "A regular view is a virtual table that executes its query each time it's accessed. A materialized view stores the query results physically and must be refreshed to update the data, but provides faster access for complex queries.",
		Category:        "Views",
		RelevantDocs:    []string{"sql-create-view", "sql-refresh-materialized-view"},
	},
	{
		ID:              9,
		Question:        "How do I roll back a transaction in PostgreSQL?",
		ReferenceAnswer: "Use the ROLLBACK command to abort the current transaction and discard all changes made within it.",
		Category:        "Transactions",
		RelevantDocs:    []string{"sql-rollback"},
	},
	{
		ID:              10,
		Question:        "What is a partial index in PostgreSQL?",
		ReferenceAnswer: "A partial index is an index built over a subset of a table, defined by a conditional expression in the WHERE clause. It's useful for indexing only the rows that are frequently queried, saving space and improving performance.",
		Category:        "Indexes",
		RelevantDocs:    []string{"indexes-partial"},
	},
	{
		ID:              11,
		Question:        "How do I update multiple columns in a single UPDATE statement?",
		ReferenceAnswer: "Use the UPDATE command with comma-separated column assignments: UPDATE table_name SET column1 = value1, column2 = value2 WHERE condition;",
		Category:        "DML",
		RelevantDocs:    []string{"sql-update"},
	},
	{
		ID:              12,
		Question:        "What is the purpose of VACUUM in PostgreSQL?",
		ReferenceAnswer: "VACUUM reclaims storage occupied by dead tuples (deleted or obsoleted rows), preventing table bloat and maintaining database performance. It's essential for proper database maintenance in PostgreSQL.",
		Category:        "Maintenance",
		RelevantDocs:    []string{"sql-vacuum"},
	},
	{
		ID:              13,
		Question:        "How do I create a database in PostgreSQL?",
		ReferenceAnswer: "Use the CREATE DATABASE command: CREATE DATABASE database_name;",
		Category:        "DDL",
		RelevantDocs:    []string{"sql-create-database"},
	},
	{
		ID:              14,
		Question:        "What are constraints in PostgreSQL tables?",
		ReferenceAnswer: "Constraints are rules enforced on table columns to maintain data integrity. Common constraints include PRIMARY KEY, FOREIGN KEY, UNIQUE, NOT NULL, and CHECK constraints.",
		Category:        "DDL",
		RelevantDocs:    []string{"ddl-constraints"},
	},
	{
		ID:              15,
		Question:        "How do I insert multiple rows in a single INSERT statement?",
		ReferenceAnswer: "Use INSERT with multiple value sets: INSERT INTO table_name (col1, col2) VALUES (val1, val2), (val3, val4), (val5, val6);",
		Category:        "DML",
		RelevantDocs:    []string{"sql-insert"},
	},
	{
		ID:              16,
		Question:        "What is a savepoint in PostgreSQL transactions?",
		ReferenceAnswer: "A savepoint is a special mark within a transaction that allows you to roll back to that point without aborting the entire transaction. It's useful for implementing complex transaction logic with partial rollbacks.",
		Category:        "Transactions",
		RelevantDocs:    []string{"sql-savepoint"},
	},
	{
		ID:              17,
		Question:        "How do I drop an index in PostgreSQL?",
		ReferenceAnswer: "Use the DROP INDEX command: DROP INDEX index_name;",
		Category:        "DDL",
		RelevantDocs:    []string{"sql-drop-index"},
	},
	{
		ID:              18,
		Question:        "What does the ANALYZE command do?",
		ReferenceAnswer: "ANALYZE collects statistics about the contents of tables in the database. These statistics are used by the query planner to determine the most efficient execution plans for queries.",
		Category:        "Maintenance",
		RelevantDocs:    []string{"sql-analyze"},
	},
	{
		ID:              19,
		Question:        "How do I revoke privileges from a user in PostgreSQL?",
		ReferenceAnswer: "Use the REVOKE command: REVOKE privilege_type ON object_name FROM user_name;",
		Category:        "Security",
		RelevantDocs:    []string{"sql-revoke"},
	},
	{
		ID:              20,
		Question:        "What is the MERGE command used for?",
		ReferenceAnswer: "MERGE (also known as UPSERT) conditionally inserts, updates, or deletes rows based on whether a match is found. It's useful for synchronizing tables or implementing 'insert or update' logic in a single statement.",
		Category:        "DML",
		RelevantDocs:    []string{"sql-merge"},
	},
}
