package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

var yogaBirth birthFlags

var yogaCmd = &cobra.Command{
	Use:   "yoga",
	Short: "Detect yogas in a birth chart",
	RunE:  runYoga,
}

func init() {
	yogaBirth.register(yogaCmd)
	rootCmd.AddCommand(yogaCmd)
}

func runYoga(cmd *cobra.Command, _ []string) error {
	if yogaService == nil {
		return errors.New("yoga service not configured")
	}

	n, err := yogaBirth.resolve(cmd.Context())
	if err != nil {
		return err
	}

	yogas := yogaService.Detect(n.Chart)
	if yogas == nil {
		yogas = []domain.Yoga{}
	}

	return render(cmd, yogas, func(w io.Writer) error {
		fmt.Fprintf(w, "Yogas for %s\n\n", n.Label)
		if len(yogas) == 0 {
			_, err := fmt.Fprintln(w, "No yogas detected.")
			return err
		}
		t := newTable("Yoga", "Bodies", "Description")
		for _, y := range yogas {
			names := make([]string, len(y.Bodies))
			for i, b := range y.Bodies {
				names[i] = b.String()
			}
			t.Row(y.Name, strings.Join(names, ", "), y.Description)
		}
		return writeTable(w, t)
	})
}
