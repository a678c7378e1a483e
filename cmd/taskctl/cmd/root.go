package cmd

import (
	"fmt"
	"os"
	"time"

	"taskboard/internal/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:8080"

var rootCmd = &cobra.Command{
	Use:          "taskctl",
	Short:        "Консольный клиент для taskboard",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("server", defaultServer, "Адрес API (или TASKCTL_SERVER)")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "Таймаут запроса")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	viper.SetEnvPrefix("TASKCTL")
	viper.AutomaticEnv()
	viper.SetDefault("server", defaultServer)
	viper.SetDefault("timeout", 10*time.Second)
}

func newClient() *client.Client {
	return client.New(viper.GetString("server"), viper.GetDuration("timeout"))
}

var errorStyle = color.New(color.FgHiRed).SprintFunc()

// failed печатает ошибку с подсказкой повторить попытку
func failed(cmd *cobra.Command, message string, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v\n", errorStyle(message), err)
	fmt.Fprintln(cmd.ErrOrStderr(), "   Please try again.")
	return err
}
