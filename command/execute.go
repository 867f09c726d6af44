package command

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gridbase/registry"
)

// Name is one of the command-algebra operation names spec.md §4.5
// catalogs, plus the two row-ingress operations (ADD_ROW, UPDATE_ROW)
// the rules engine of §4.3 is invoked from.
type Name string

const (
	SaveTable      Name = "SAVE_TABLE"
	DropColumns    Name = "DROP_COLUMNS"
	RenameColumn   Name = "RENAME_COLUMN"
	RenameTable    Name = "RENAME_TABLE"
	DeleteRows     Name = "DELETE_ROWS"
	CollapseTable  Name = "COLLAPSE_TABLE"
	ReplaceText    Name = "REPLACE_TEXT"
	AddColumn      Name = "ADD_COLUMN"
	SetValue       Name = "SET_VALUE"
	JoinTable      Name = "JOIN_TABLE"
	CopyTable      Name = "COPY_TABLE"
	SortTable      Name = "SORT_TABLE"
	DeleteTable    Name = "DELETE_TABLE"
	GroupTable     Name = "GROUP_TABLE"
	ReorderColumns Name = "REORDER_COLUMNS"
	ConvertColumn  Name = "CONVERT_COLUMN"
	SpliceTables   Name = "SPLICE_TABLES"
	AddRow         Name = "ADD_ROW"
	UpdateRow      Name = "UPDATE_ROW"
)

// Execute is the single entry point spec.md §6 names:
// "execute(command_name, params) -> result". Callers must not pass a
// ".csv" suffix in table names; if they do, it is stripped here before
// dispatch, per §6. Every call is logged via zap with a per-call
// correlation id, the shape of the teacher's txID :=
// fmt.Sprintf("tx_%d", ...) pattern in database/insert.go, generalized
// to a real UUID since this system has no event log to source a
// sequence number from.
func Execute(ctx context.Context, reg *registry.Registry, name Name, p Params, env Env, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	callID := uuid.New().String()
	start := time.Now()

	p.TableName = stripCSVSuffix(p.TableName)
	p.OtherTable = stripCSVSuffix(p.OtherTable)
	p.NewName = stripCSVSuffix(p.NewName)
	for i, t := range p.SelectedTables {
		p.SelectedTables[i] = stripCSVSuffix(t)
	}

	res, err := dispatch(ctx, reg, name, p, env)

	fields := []zap.Field{
		zap.String("call_id", callID),
		zap.String("command", string(name)),
		zap.String("table", p.TableName),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		log.Error("command failed", append(fields, zap.Error(err))...)
	} else {
		log.Info("command ok", fields...)
	}
	return res, err
}

func dispatch(ctx context.Context, reg *registry.Registry, name Name, p Params, env Env) (Result, error) {
	switch name {
	case SaveTable:
		return execSaveTable(ctx, reg, p, env)
	case DropColumns:
		return execDropColumns(reg, p)
	case RenameColumn:
		return execRenameColumn(reg, p)
	case RenameTable:
		return execRenameTable(reg, p)
	case DeleteRows:
		return execDeleteRows(reg, p, env)
	case CollapseTable:
		return execCollapseTable(reg, p)
	case ReplaceText:
		return execReplaceText(reg, p)
	case AddColumn:
		return execAddColumn(reg, p, env)
	case SetValue:
		return execSetValue(reg, p, env)
	case JoinTable:
		return execJoinTable(reg, p)
	case CopyTable:
		return execCopyTable(reg, p)
	case SortTable:
		return execSortTable(reg, p)
	case DeleteTable:
		return execDeleteTable(reg, p)
	case GroupTable:
		return execGroupTable(reg, p)
	case ReorderColumns:
		return execReorderColumns(reg, p)
	case ConvertColumn:
		return execConvertColumn(reg, p)
	case SpliceTables:
		return execSpliceTables(reg, p)
	case AddRow:
		return execAddRow(reg, p, env)
	case UpdateRow:
		return execUpdateRow(reg, p, env)
	default:
		return Result{}, badParameter("unknown command %q", name)
	}
}

func stripCSVSuffix(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return name[:len(name)-4]
	}
	return name
}
