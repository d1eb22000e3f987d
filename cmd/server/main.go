package main

import "payrollhr/internal/app/server"

func main() {
	server.Run()
}
