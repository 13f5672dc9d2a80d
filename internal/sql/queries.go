package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/extract_patient_visits.sql
var ExtractPatientVisits string

//go:embed queries/truncate_warehouse.sql
var TruncateWarehouse string

//go:embed queries/truncate_mart.sql
var TruncateMart string

//go:embed queries/insert_etl_run.sql
var InsertETLRun string

//go:embed queries/finish_etl_run.sql
var FinishETLRun string

//go:embed queries/analyze_warehouse.sql
var AnalyzeWarehouse string

//go:embed queries/analyze_mart.sql
var AnalyzeMart string
