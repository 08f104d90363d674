/**
 * Explore DB contents
 *
 * Given a chain DB, this tool provides options to inspect and explore
 * it. For every non-empty table, print the number of rows, table size,
 * min/average/max size of values. Decoded row contents are available
 * for the fixed-layout tables.
 */

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/status-im/keycard-go/hexutils"
	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/monerokit/monerodb/types"
)

const databaseFileName = "monerochain.db"

var (
	datadirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Path to the chain data directory.",
		Required: true,
	}
	tableStatsFlag = &cli.BoolFlag{
		Name:  "table-stats",
		Usage: "Show stats of every non-empty table.",
	}
	tableContentsFlag = &cli.BoolFlag{
		Name:  "table-contents",
		Usage: "Show decoded contents of a given table.",
	}
	tableNameFlag = &cli.StringFlag{
		Name:  "table-name",
		Usage: "Table to show contents of.",
	}
	limitFlag = &cli.Uint64Flag{
		Name:  "limit",
		Usage: "Limit to rows.",
		Value: 10,
	}
)

// recordFactories covers the tables whose rows decode into a known
// record shape. The remaining tables hold consensus blobs or raw
// scalars and are only reachable through --table-stats.
var recordFactories = map[string]func() types.Record{
	"block_info":    func() types.Record { return &types.BlockInfo{} },
	"block_heights": func() types.Record { return &types.BlockHeight{} },
	"tx_indices":    func() types.Record { return &types.TxIndex{} },
	"output_txs":    func() types.Record { return &types.OutputTx{} },
	"txpool_meta":   func() types.Record { return &types.TxPoolMeta{} },
	"alt_blocks":    func() types.Record { return &types.AltBlock{} },
}

func main() {
	app := &cli.App{
		Name:   "exploredb",
		Usage:  "Inspect the tables of a chain database.",
		Flags:  []cli.Flag{datadirFlag, tableStatsFlag, tableContentsFlag, tableNameFlag, limitFlag},
		Action: explore,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func explore(cliCtx *cli.Context) error {
	dbPath := filepath.Join(cliCtx.String(datadirFlag.Name), databaseFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("could not locate database file %s: %w", dbPath, err)
	}

	if cliCtx.Bool(tableStatsFlag.Name) {
		return showTableStats(dbPath)
	}
	if cliCtx.Bool(tableContentsFlag.Name) {
		return printTableContents(dbPath, cliCtx.String(tableNameFlag.Name), cliCtx.Uint64(limitFlag.Name))
	}
	return cli.ShowAppHelp(cliCtx)
}

func openDB(dbPath string) (*bolt.DB, error) {
	// If the file is busy, then exit instead of waiting on the lock.
	return bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
}

func showTableStats(dbPath string) error {
	db, err := openDB(dbPath)
	if err != nil {
		return fmt.Errorf("could not open db to show table stats: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Fatalf("could not close db after showing table stats, %v", closeErr)
		}
	}()

	var tables []string
	if err := db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			tables = append(tables, string(name))
			return nil
		})
	}); err != nil {
		return fmt.Errorf("could not read list of tables from db: %w", err)
	}

	for _, tName := range tables {
		count := uint64(0)
		minValueSize := ^uint64(0)
		maxValueSize := uint64(0)
		totalValueSize := uint64(0)
		minKeySize := ^uint64(0)
		maxKeySize := uint64(0)
		totalKeySize := uint64(0)
		if err := walkRows(db, []byte(tName), ^uint64(0), func(k, v []byte) error {
			count++
			valueSize := uint64(len(v))
			if valueSize < minValueSize {
				minValueSize = valueSize
			}
			if valueSize > maxValueSize {
				maxValueSize = valueSize
			}
			totalValueSize += valueSize

			keySize := uint64(len(k))
			if keySize < minKeySize {
				minKeySize = keySize
			}
			if keySize > maxKeySize {
				maxKeySize = keySize
			}
			totalKeySize += keySize
			return nil
		}); err != nil {
			log.Errorf("could not get stats for table: %s, %v", tName, err)
			continue
		}

		if count != 0 {
			averageValueSize := totalValueSize / count
			averageKeySize := totalKeySize / count
			fmt.Println("------ ", tName, " --------")
			fmt.Println("NumberOfRows     = ", count)
			fmt.Println("TotalTableSize   = ", humanize.Bytes(totalValueSize+totalKeySize))
			fmt.Println("KeySize          = ", humanize.Bytes(totalKeySize), "(min = "+humanize.Bytes(minKeySize)+", avg = "+humanize.Bytes(averageKeySize)+", max = "+humanize.Bytes(maxKeySize)+")")
			fmt.Println("ValueSize        = ", humanize.Bytes(totalValueSize), "(min = "+humanize.Bytes(minValueSize)+", avg = "+humanize.Bytes(averageValueSize)+", max = "+humanize.Bytes(maxValueSize)+")")
		}
	}
	return nil
}

func printTableContents(dbPath, tableName string, limit uint64) error {
	newRecord, ok := recordFactories[tableName]
	if !ok {
		return fmt.Errorf("table %q has no decodable row shape, use --table-stats instead", tableName)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return fmt.Errorf("could not open db to show table contents: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Fatalf("could not close db after showing table contents, %v", closeErr)
		}
	}()

	row := uint64(0)
	return walkRows(db, []byte(tableName), limit, func(k, v []byte) error {
		fmt.Printf("---- row = %04d ----\n", row)
		row++
		fmt.Println("key   :", hexutils.BytesToHex(k))
		fmt.Println("value : size =", humanize.Bytes(uint64(len(v))))
		rec := newRecord()
		if err := rec.UnmarshalRecord(v); err != nil {
			log.Errorf("could not decode row: %v", err)
			return nil
		}
		fmt.Printf("%+v\n", rec)
		return nil
	})
}

var errRowLimit = errors.New("row limit reached")

// walkRows visits up to limit rows of a table in key order. Rows of
// multi-value tables live one level down, inside a nested set per
// primary key; those are descended into transparently.
func walkRows(db *bolt.DB, tableName []byte, limit uint64, fn func(k, v []byte) error) error {
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(tableName)
		if b == nil {
			return fmt.Errorf("table %s missing", tableName)
		}
		count := uint64(0)
		var walk func(b *bolt.Bucket) error
		walk = func(b *bolt.Bucket) error {
			return b.ForEach(func(k, v []byte) error {
				if v == nil {
					return walk(b.Bucket(k))
				}
				if count >= limit {
					return errRowLimit
				}
				count++
				return fn(k, v)
			})
		}
		return walk(b)
	})
	if errors.Is(err, errRowLimit) {
		return nil
	}
	return err
}
